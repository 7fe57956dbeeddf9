package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// directive blocks
	DirInfo               Code = 1000
	DirOptionsSyntax      Code = 1001
	DirOptionsNotMapping  Code = 1002
	DirUnknownOption      Code = 1003
	DirInvalidOptionValue Code = 1004
	DirContentNotAllowed  Code = 1005
	DirArity              Code = 1006
	DirUnknownDirective   Code = 1007

	// schema files
	SchInfo            Code = 2000
	SchInvalidFile     Code = 2001
	SchUnknownConvert  Code = 2002
	SchDuplicateSchema Code = 2003

	// io
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// observability
	ObsInfo    Code = 5000
	ObsTimings Code = 5001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:           "Unknown error",
		DirInfo:               "Directive information",
		DirOptionsSyntax:      "Invalid option block syntax",
		DirOptionsNotMapping:  "Option block is not a mapping",
		DirUnknownOption:      "Unknown directive option",
		DirInvalidOptionValue: "Invalid directive option value",
		DirContentNotAllowed:  "Directive content not permitted",
		DirArity:              "Wrong number of directive arguments",
		DirUnknownDirective:   "Unknown directive",
		SchInfo:               "Schema information",
		SchInvalidFile:        "Invalid schema file",
		SchUnknownConvert:     "Unknown option converter",
		SchDuplicateSchema:    "Duplicate directive schema",
		IOInfo:                "I/O information",
		IOLoadFileError:       "Failed to load file",
		IOCacheError:          "Result cache failure",
		ObsInfo:               "Observability information",
		ObsTimings:            "Phase timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("DIR%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SCH%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
