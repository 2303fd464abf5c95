package testutil

import (
	"os"
	"strings"
	"testing"
	"time"

	"agenda/pkg/client"
)

// ServerURL returns the base URL of the service under test, skipping the
// test when TEST_SERVER_URL is not set. Integration suites only run against
// a live deployment.
func ServerURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("TEST_SERVER_URL")
	if url == "" {
		t.Skip("TEST_SERVER_URL not set, skipping integration test")
	}
	return url
}

// WaitForHealthy blocks until the service responds on /health.
func WaitForHealthy(t *testing.T, httpClient *client.HttpClient) {
	t.Helper()
	if err := httpClient.WaitForHealthy(30 * time.Second); err != nil {
		t.Fatalf("service not healthy: %v", err)
	}
}

func AssertStatusCode(t *testing.T, resp *client.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d. Body: %s", expected, resp.StatusCode, string(resp.Body))
	}
}

func AssertContains(t *testing.T, resp *client.Response, substr string) {
	t.Helper()
	body := string(resp.Body)
	if !strings.Contains(body, substr) {
		t.Fatalf("response body does not contain %q. Body: %s", substr, body)
	}
}
