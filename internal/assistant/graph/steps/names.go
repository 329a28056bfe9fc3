package steps

// Node names for the conversation graph. The router is the entry node; the
// handle_* nodes and the end of the draft pipeline are the terminal nodes.
const (
	NodeRouter               = "router"
	NodeParseInput           = "parse_input"
	NodeExtractAndSummarize  = "extract_and_summarize"
	NodeAskForTone           = "ask_for_tone"
	NodeGenerateInitialDraft = "generate_initial_draft"
	NodeRefineDraft          = "refine_draft"
	NodeShowInfo             = "show_info"
	NodeSaveDraft            = "save_draft"
	NodeResetSession         = "reset_session"
	NodeHandleUnclear        = "handle_unclear"
	NodeHandleIdleChat       = "handle_idle_chat"
	NodeHandleError          = "handle_error"
)
