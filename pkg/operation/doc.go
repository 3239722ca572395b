/*
Package operation implements the commands a user runs: sync, status and clean.

	+-------------+
	|  Operation  |
	| (Command)   |
	+------+------+
	       |
	+------+------+
	|  Registry   |
	| (Fonts)     |
	+------+------+

🎯 Purpose:
- Builds a registry from the finalized config
- Shows the action matrix before anything changes
- Turns the registry report into console output and an error

🔄 Flow:
1. Load the local catalog, the manifest and (unless local) the remote catalog
2. Check every selected font and render the matrix
3. Handle fonts in name order and write the catalog
4. Report outcomes and failures

🤝 Interfaces:
- remote.Provider: catalog and archive source
- config.Config: paths, host and font filter
- io.Writer: the console the matrix and report go to

🔍 Example:

	op, err := operation.New(operation.Options{
		Config:   cfg,
		Provider: remote.NewClient(cfg.Host, nil),
		Console:  os.Stdout,
	})
	report, err := op.Sync(ctx)
*/
package operation
