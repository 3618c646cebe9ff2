// journal/store.go
package journal

// Store is the key-value contract the session book persists through.
// The engine treats writes as fire-and-forget: failures are logged by
// the caller, never propagated into the trading flow.
type Store interface {
	Set(key, value string) error
	Get(key string) (value string, ok bool, err error)
	List(prefix string) ([]string, error)
	Close() error
}
