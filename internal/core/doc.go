// Package core provides the application logic behind the upload, chart and
// processing endpoints.
//
// It holds no transport code and can be used by web handlers, the CLI or
// tests without modification.
//
// # Architecture
//
//   - Service: the entry point. It ingests uploads, builds and renders charts,
//     runs processing requests and exports datasets.
//   - DatasetStore: per-session storage of parsed uploads, keyed by a random
//     id, with expiry and a background sweeper.
//   - IngestLimiter: bounds how many uploads are parsed at once and lets
//     shutdown wait for in-flight parses.
//
// # Upload Flow
//
//  1. The web layer reads the file (bounded by the upload size ceiling) and
//     calls [Service.Ingest].
//  2. Ingest waits for a limiter slot, detects the format and parses the
//     content into a dataset.
//  3. The dataset is stored and an [UploadSummary] with its id is returned.
//  4. Later requests name the id to chart, process or export the dataset.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a code for support reference:
//
//   - FMT001, PARSE001, ZIP001: ingest errors
//   - CFG001, CFG002: chart configuration errors
//   - DS001, PROC001: dataset lookup and processing errors
//   - FILE001-FILE005, UPL002-UPL005: upload errors
package core
