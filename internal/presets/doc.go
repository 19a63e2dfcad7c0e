// Package presets ships ready-made replacement bundles for common paste
// sources, embedded at compile time.
//
// Each preset is one YAML file under rules/ holding ordered regex pairs
// for the HTML stage (raw markup, before parsing) and the Markdown stage
// (converted text, before heading adjustment):
//
//	rules/
//	├── word.yaml    - Microsoft Word and Outlook pastes
//	├── gdocs.yaml   - Google Docs pastes
//	└── web.yaml     - general web page pastes
//
// Preset pairs run before config and flag pairs, so user rules can
// build on or correct what a preset does. Preset names are validated
// to prevent path traversal.
package presets
