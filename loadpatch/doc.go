/*Package loadpatch decodes the three JSON file shapes a patching run
  consumes: the patch file itself, an optional defaults file supplying
  shared Pointer field values, and an optional freespace file listing
  [start, end) intervals. It also writes the freespace file shape back
  out once a run has consumed part of it.
*/
package loadpatch
