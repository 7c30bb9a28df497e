/*Package ptr implements Pointer: a typed, sized patch component whose
  encoded value is the final address of another patch (its referent). A
  Pointer's gamut is the arithmetic progression of addresses it can legally
  encode, derived from its offset/size/align/stride/signedness/endianness.
*/
package ptr
