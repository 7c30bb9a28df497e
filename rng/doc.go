/*Package rng implements arithmetic-progression set algebra over integer
  addresses: intersection of two progressions, and splitting a progression
  around an excluded sub-interval. A Range is either a concrete progression
  {start, start+step, ..., < stop}, the unconstrained sentinel (no addresses
  excluded yet), or empty (no address satisfies it).
*/
package rng
