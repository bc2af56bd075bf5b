// Package scan frames line-oriented input into a frayed stream.
//
// A configurable separator line (blank by default) splits the input
// into subsequences:
//
//	src, err := scan.New(file, scan.Config{}, log)
//	if err != nil {
//	    return err
//	}
//	for sub := range src.Frayed().Defray().All() {
//	    paragraph := sub.Collect()
//	}
//
// Like bufio.Scanner, a Source reports read failures through Err once
// the stream is exhausted.
package scan
