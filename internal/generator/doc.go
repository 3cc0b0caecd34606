// Package generator writes generated files to disk.
//
// # Features
//
//   - Operations that validate before they execute, with dry-run support
//   - Atomic writes (temp file + rename) so readers never see half a file
//   - Transactions that restore every touched file if one write fails
//   - Output path patterns rendered with text/template
//   - Line diffs for previewing what a write would change
//
// # Transactions
//
// A run of the simulation loop writes one file per iteration. Stage them in
// a transaction so a failure leaves the previous run untouched:
//
//	tx := generator.NewTransaction()
//	tx.Add(&generator.WriteFileOp{Path: "outer0/inner0/model.properties", Content: content0, Mode: 0644})
//	tx.Add(&generator.WriteFileOp{Path: "outer0/inner1/model.properties", Content: content1, Mode: 0644})
//
//	if err := tx.Commit(ctx); err != nil {
//	    // Files that already existed hold their old content again,
//	    // new files and the directories created for them are removed.
//	    return err
//	}
package generator
