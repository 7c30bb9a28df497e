/*Package fit searches for a legal placement of every patch: an address for
  each name in the gamut map such that the address lies in the patch's
  gamut, inside freespace, and no two patches overlap. Zero-size patches
  are the exception: they are given the placeholder address 0 without
  regard to gamut or freespace. It backtracks in most-constrained-variable
  order, placing the patch with the fewest candidate addresses first.
*/
package fit
