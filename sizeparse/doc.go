/*Package sizeparse parses du-style filesize specifications for the
  -l/--limit CLI flag: an integer optionally followed by a case-insensitive
  unit suffix.
*/
package sizeparse
