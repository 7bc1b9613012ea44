package sqle

// Options configures one Execute call: a plain, caller-constructed
// options value rather than a builder or functional-options API, since
// the option set is small and fixed.
type Options struct {
	// OptimizationLevel selects how hard the rewriter works before
	// lowering. 0 disables rewriting entirely; any positive
	// value runs the fixpoint rewriter to completion -- there is no
	// intermediate cost-based tier (Non-goals exclude cost-based
	// optimization).
	OptimizationLevel int

	// EmitCSV, when true, makes ExecuteAndRender render the drained result
	// as CSV text (format.CSV) into Result.CSV. Execute ignores it.
	EmitCSV bool

	// EmitTable, when true, additionally renders the result as a
	// Github-flavored Markdown table (format.Table).
	EmitTable bool

	// DumpRA, when true, logs a pretty-printed dump of the relational-
	// algebra tree -- both the parsed form and the rewritten form (the
	// same tree when OptimizationLevel is 0) -- at Debug level.
	DumpRA bool
}
