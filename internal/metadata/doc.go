// Package metadata collects personal metadata tokens for wordlist generation
// and strength evaluation.
//
// Tokens can come from:
//   - plain words given on the command line
//   - JSON or YAML files holding a flat or nested mapping, e.g.
//     {"name": "Vaishnav", "born": 2004, "pets": ["rex", "milo"]}
//   - EXIF tags of local photos (author, camera owner, capture year)
//   - saved HTML pages such as a downloaded profile page
//
// Every source is flattened into a list of strings. Collect merges sources
// in the order given, trimming values and dropping empties and duplicates.
package metadata
