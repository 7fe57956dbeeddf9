// Package directive parses the inside of one directive block: the argument
// line, the option block and the body.
//
// A block reaches this package already cut out of the document by the
// scanner:
//
//	```{figure} images/fig.png      <- Invocation.FirstLine
//	:width: 80%                     <- option block (colon form)
//	:align: center
//
//	Caption text.                   <- body
//	```
//
// Parse is pure. It reads the schema and the invocation, allocates its own
// result and may be called from many goroutines at once. Argument count
// errors are returned as *ArityError; everything else is collected in
// Result.Warnings so that one bad option never hides the rest of the block.
package directive
