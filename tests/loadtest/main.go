package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

const (
	numWorkers   = 50
	testDuration = 10 * time.Second
	numGuests    = 200
)

var (
	baseURL   = envOr("WEDDING_URL", "http://127.0.0.1:3000")
	adminUser = envOr("ADMIN_USER", "admin")
	adminPass = os.Getenv("ADMIN_PASS")
)

var publicReads = []string{
	"/api/rsvp/stats",
	"/api/playlist",
	"/api/gallery",
	"/api/wishlist",
	"/api/links",
}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	fmt.Println("=== Wedding site load test ===")
	fmt.Printf("Target: %s | Workers: %d | Duration: %s\n\n", baseURL, numWorkers, testDuration)

	// Wait for server
	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	// Phase 1: public reads only
	fmt.Println("\n--- Phase 1: Public reads ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doGet(publicReads[rng.Intn(len(publicReads))], false)
	})

	// Phase 2: guest traffic, every create is a demo write unless demo mode is off
	fmt.Println("\n--- Phase 2: Guest mix (60% GET, 40% POST) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.60:
			return doGet(publicReads[rng.Intn(len(publicReads))], false)
		case r < 0.75:
			return doPostRSVP(rng)
		case r < 0.90:
			return doPostSong(rng)
		default:
			return doPostAnalytics(rng)
		}
	})

	if adminPass == "" {
		fmt.Println("\nADMIN_PASS not set, skipping admin phase")
		return
	}

	// Phase 3: admin writes contend on the wishlist document
	fmt.Println("\n--- Phase 3: Admin wishlist churn (50% GET /all, 50% create+delete) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.5 {
			return doGet("/api/wishlist/all", true)
		}
		return doWishlistChurn(rng)
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-28s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 94))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-28s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 94))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func send(method, path string, payload interface{}, admin bool) (int, []byte, time.Duration, error) {
	var body io.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		return 0, nil, 0, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.SetBasicAuth(adminUser, adminPass)
	}

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return 0, nil, lat, err
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out, lat, nil
}

func doGet(path string, admin bool) result {
	status, _, lat, err := send(http.MethodGet, path, nil, admin)
	return result{"GET " + path, status, lat, err != nil || status != http.StatusOK}
}

func doPostRSVP(rng *rand.Rand) result {
	n := rng.Intn(numGuests)
	attendance := "yes"
	if rng.Float64() < 0.2 {
		attendance = "no"
	}
	payload := map[string]interface{}{
		"name":       fmt.Sprintf("Guest %d", n),
		"email":      fmt.Sprintf("guest%d@example.com", n),
		"guests":     rng.Intn(4) + 1,
		"attendance": attendance,
	}
	status, _, lat, err := send(http.MethodPost, "/api/rsvp", payload, false)
	return result{"POST /api/rsvp", status, lat, err != nil || status != http.StatusOK}
}

func doPostSong(rng *rand.Rand) result {
	payload := map[string]string{
		"title":     fmt.Sprintf("Song %d", rng.Intn(1000)),
		"artist":    "Load Test Band",
		"submitter": fmt.Sprintf("Guest %d", rng.Intn(numGuests)),
	}
	status, _, lat, err := send(http.MethodPost, "/api/playlist", payload, false)
	return result{"POST /api/playlist", status, lat, err != nil || status != http.StatusOK}
}

func doPostAnalytics(rng *rand.Rand) result {
	payload := map[string]string{
		"linkTitle": "RSVP",
		"linkUrl":   "/rsvp",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	status, _, lat, err := send(http.MethodPost, "/api/analytics", payload, false)
	return result{"POST /api/analytics", status, lat, err != nil || status != http.StatusOK}
}

func doWishlistChurn(rng *rand.Rand) result {
	payload := map[string]interface{}{
		"title":   fmt.Sprintf("Load test gift %d", rng.Intn(1_000_000)),
		"visible": false,
	}
	status, body, lat, err := send(http.MethodPost, "/api/wishlist", payload, true)
	if err != nil || status != http.StatusOK {
		return result{"POST+DELETE /api/wishlist", status, lat, true}
	}

	var created struct {
		Item struct {
			ID string `json:"id"`
		} `json:"item"`
	}
	if json.Unmarshal(body, &created) != nil || created.Item.ID == "" {
		return result{"POST+DELETE /api/wishlist", status, lat, true}
	}

	status, _, delLat, err := send(http.MethodDelete, "/api/wishlist/"+created.Item.ID, nil, true)
	return result{"POST+DELETE /api/wishlist", status, lat + delLat, err != nil || status != http.StatusOK}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
