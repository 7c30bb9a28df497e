/*Package freespace represents the set of address intervals available for
  placing patches: a sorted list of disjoint, non-adjacent half-open
  intervals. It supports merging in new free space, clipping it out again,
  and enumerating candidate start addresses for a patch of a given size
  under a Pointer-derived gamut.
*/
package freespace
