// Package client submits batches to a word2pdf server and tracks the
// upload lifecycle of one batch.
//
// A Session mirrors what the browser page does: it validates a selection
// against the server limits, submits every file as one request, assigns
// each file its outcome from the error manifest, and holds the returned
// archive until it is downloaded or the session is reset.
//
//	s := client.NewSession(client.DefaultLimits())
//	if err := s.Select(files); err != nil {
//		return err // nothing was sent
//	}
//	_ = s.Submit(ctx, client.New(baseURL))
//	_, err := s.Download(out)
package client
