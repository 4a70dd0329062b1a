// Package checkpoint persists the resume cursor of a long-running batch.
//
// Each operation owns a namespace ("update-cards", "update-sales") and keeps a
// single JSON blob in it:
//
//	{"last_index": 42, "work_list": [...], "state": {...}, "saved_at": "..."}
//
// The blob lives on one of three backends selected by configuration:
//
//   - file: one file per namespace under a directory
//   - s3: one object per namespace in the configured bucket
//   - redis: one key per namespace
//
// Store.Load never fails. A missing or unreadable checkpoint is logged and
// treated as a fresh start.
package checkpoint
