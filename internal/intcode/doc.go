/*
Package intcode implements a resumable stored-program computer.

A Program owns a memory of signed 64-bit cells loaded from a comma separated
tape, a program counter, a relative base register and a queue of pending
inputs. Running a program executes the fetch-decode-execute cycle until the
next externally observable event: an output value, the program completing, or
an input instruction finding the queue empty. All state needed to resume lives
in the Program, so resuming is simply calling RunUntilEvent again.
*/
package intcode
