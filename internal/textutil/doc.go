// Package textutil provides the text normalization shared by lyric matching
// and caption export.
//
// The primary use cases are:
//   - Normalizing tokens for comparison (case folding, accent removal,
//     stripping everything that is not a letter or digit)
//   - Splitting edited lyric text into lines and comparison tokens
//   - Turning free-form style names into filename slugs
//
// Normalization is for comparison only; callers keep the original text for
// display so Unicode, punctuation and emoji survive unchanged.
package textutil
