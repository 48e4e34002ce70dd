// Package logging provides structured logging for the CraftUI catalog.
//
// This package wraps Go's log/slog to provide JSON-formatted logs with
// persistent attributes. The interactive browser owns the terminal, so logs
// always go to a file ({dir}/debug.log) or nowhere at all.
//
// # Thread Safety
//
// [Logger] is safe for concurrent use. Child loggers created via With*
// methods share the underlying writer.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/logs", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("doc opened", "slug", "tabs")
//
// # Persistent Attributes
//
//	tabsLogger := logger.WithComponent("tabs").WithSlug("tabs")
//	tabsLogger.Debug("focus moved", "from", "preview", "to", "code")
//
// Output:
//
//	{"time":"...","level":"DEBUG","msg":"focus moved","component":"tabs","slug":"tabs","from":"preview","to":"code"}
package logging
