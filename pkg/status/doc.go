/*
Package status shows the user what a run plans to do and what it did.

	            +-------------+
	            |   Status    |
	            | (Reporting) |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+-----+
	|  Matrix   |           | Reporter |
	|  (plan)   |           | (result) |
	+-----------+           +----------+

🎯 Purpose:
- Renders the action matrix: one row per font with its versions and the
  download / extract / links steps it needs
- Summarizes the plan in one line
- Prints per-font outcomes, progress and failures after handling

🔄 Flow:
1. The operation checks every font and builds a Row for each
2. RenderMatrix prints the rows as a pterm table before anything is changed
3. After handling, the Reporter prints outcomes and the failure list

🤝 Interfaces:
- Formatter: words outcomes, progress and errors

🔍 Example:

	rows := []status.Row{status.NewRow(f)}
	if err := status.RenderMatrix(os.Stdout, rows); err != nil {
		return err
	}
	fmt.Println(status.Summary(rows))
*/
package status
