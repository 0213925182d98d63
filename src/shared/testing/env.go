package testlib

import (
	"net"
	"net/url"
	"os"
	"time"

	. "github.com/onsi/gomega"
)

func SetTestEnv() {
	err := os.Setenv("ENVIRONMENT", "test")
	Expect(err).NotTo(HaveOccurred())
}

// LocalServiceReachable reports whether something is listening behind the
// given URL, integration suites skip themselves when it isn't
func LocalServiceReachable(serviceURL string) bool {
	parsed, err := url.Parse(serviceURL)
	if err != nil {
		return false
	}

	conn, err := net.DialTimeout("tcp", parsed.Host, 500*time.Millisecond)
	if err != nil {
		return false
	}

	_ = conn.Close()
	return true
}
