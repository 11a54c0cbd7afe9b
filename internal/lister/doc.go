// Package lister handles paginated enumeration of bucket contents.
// This includes collecting downloadable object keys and computing bucket
// summaries without materializing the key list.
//
// Directory markers (keys ending in "/") are filtered out of every result,
// so consumers only ever see keys that can be downloaded.
package lister
