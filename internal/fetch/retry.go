package fetch

// Retry runs fn up to maxAttempts times. The retryable predicate is
// consulted only while attempts remain; errors it rejects propagate
// immediately. Attempts are issued back to back with no backoff delay: the
// admission gate already throttles pressure on the remote host, and the
// retried class is connection-reset-style failures where waiting buys
// nothing.
func Retry(maxAttempts int, retryable func(error) bool, fn func() error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if attempt == maxAttempts || !retryable(err) {
			return err
		}
	}
	return err
}
