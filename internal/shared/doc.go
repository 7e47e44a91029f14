// Package shared holds helpers used by more than one package.
//
// # Test Utilities
//
// The testutil subpackage provides:
//
//   - BufferedSlogHandler, a slog.Handler that records log lines for assertions
//   - EncodePickle, a protocol 3 pickle writer for building dump files in tests
//   - raw-record builders (RawDump, ProbeRecord, ParallelRecord) and the
//     FeScenario and SteelScenario fixtures
//
// Example usage:
//
//	func TestLoad(t *testing.T) {
//	    path := testutil.WritePickle(t, t.TempDir(), "fe.pkl", testutil.FeScenario())
//	    logger, records := testutil.NewTestLogger(t)
//	    ...
//	}
//
// testutil must not import other internal packages besides the domain
// contracts, so any package can use it from its tests.
package shared
