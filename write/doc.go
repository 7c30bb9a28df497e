/*Package write emits a fit map's patches into a byte buffer: a growable
  image of the target file, written in ascending address order, each
  component's data placed by Patch.Components and Component.Data.
*/
package write
