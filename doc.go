// Package word2pdf converts Word documents (.doc, .docx) to PDF and packages
// batches of converted files into a ZIP archive.
//
// # Quick Start
//
// Create a converter and convert a batch:
//
//	conv, err := word2pdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	batch, err := conv.ConvertBatch(ctx, []word2pdf.File{
//	    word2pdf.NewFile("a.docx", data),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("converted-pdfs.zip", batch.Archive, 0o644)
//	for _, line := range batch.Errors() {
//	    log.Println(line)
//	}
//
// # Engines
//
// Two engines share the same pipeline shape:
//
//   - EngineText (default) extracts the document text, maps it onto the
//     character set of a PDF core font, wraps it into lines and pages, and
//     writes a fresh PDF with pdfcpu. Formatting is not preserved and no
//     external process is started. Legacy binary .doc files are rejected.
//   - EngineLibreOffice runs LibreOffice headless for each file, preserving
//     the original formatting and supporting legacy .doc files.
//
// # Failure Handling
//
// A file that cannot be converted never aborts its batch. Its Outcome
// carries the error and Batch.Errors lists it as "<name>: <message>".
// ConvertBatch itself fails only for an empty batch, a failure to build the
// archive, or when ctx ends.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := word2pdf.NewConverter(
//	    word2pdf.WithFontSize(12),
//	    word2pdf.WithMargin(72),
//	    word2pdf.WithEngine(word2pdf.EngineLibreOffice),
//	)
package word2pdf
