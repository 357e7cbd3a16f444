// Package extraction resolves file formats to content-extraction adapters.
//
// The Registry is a capability map from extension to Adapter; the pipeline
// depends only on the registry's Extract method and never on concrete format
// logic. Extensions without an adapter, and extensions on the exclude list
// (archives, executables, databases), are reported as unsupported so the
// pipeline records them as skipped.
//
// Only a plaintext adapter ships today. Office documents, PDFs, and OCR need
// real format parsers and are deliberately out of scope; registering a new
// adapter is the extension point.
package extraction
