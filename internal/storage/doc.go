// Package storage implements the embedded on-device store backing the
// offline cache.
//
// The engine owns a single lazily-opened SQLite handle shared by every
// caller. The first Open runs schema setup (create missing stores and
// secondary indexes, tracked by version); concurrent first calls observe
// exactly one setup run and the same resulting handle.
//
// Stores hold one JSON document per row. Two key disciplines exist:
// caller-keyed stores (guide id as primary key, written with [Engine.Put])
// and engine-keyed stores (monotonic integer keys assigned by
// [Engine.Add]). Secondary indexes are SQLite expression indexes over
// json_extract, declared in the schema migrations.
package storage
