// Package marker recognizes non-sung section labels embedded in lyric text.
//
// Lyric editors wrap structural labels in double asterisks, for example
// "**[Verse 1]**" or "**[Chorus]**". Those lines still arrive from the
// aligner as timed tokens, but they are excluded from captions and can be
// skipped by live highlighting. Classification is exposed as a tagged Kind
// so downstream code switches on a value rather than re-testing raw text.
package marker
