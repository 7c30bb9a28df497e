/*Package constrain builds the gamut map: the transitive closure of every
  Pointer constraint reachable from a set of root patches, by walking
  referents as they're discovered.
*/
package constrain
