// Package app is the composition root of the policy query client.
//
// Run loads the TOML configuration, applies command-line overrides, opens the
// zap log file, registers Prometheus collectors (optionally serving them on
// metrics_addr), builds the search client and result store, and hands
// everything to the Bubble Tea UI, which blocks until the user exits.
//
//	Run()
//	  ├─> config.Load()          ~/.config/apolice/config.toml
//	  ├─> logging.New()          JSON log file
//	  ├─> prefs.Load()           theme and last criteria
//	  ├─> search.NewClient()     GET <base_url>/apolices
//	  ├─> StartMetricsServer()   optional /metrics
//	  └─> ui.Run()               TUI (blocks)
//
// Configuration errors are fatal. Search failures never are; they surface
// as a banner in the UI.
package app
