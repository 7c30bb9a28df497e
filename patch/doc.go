/*Package patch defines the patch components applied to a target buffer: a
  Datum is a fixed byte sequence, a Patch is a named ordered sequence of
  components, and a Map collects all patches known to a run, keyed by
  name.
*/
package patch
