package main

import (
	"bytes"
	"fmt"
	json "github.com/goccy/go-json"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/http/cookiejar"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const (
	baseURL      = "http://127.0.0.1:8080"
	numWorkers   = 50
	testDuration = 10 * time.Second
)

var brands = []string{"BMW", "Audi", "Seat", "Renault", "Fiat", "Lancia", "Peugeot", "Volvo", "Saab", "Opel"}

var transport = &http.Transport{
	MaxIdleConns:        200,
	MaxIdleConnsPerHost: 200,
	IdleConnTimeout:     30 * time.Second,
	DialContext: (&net.Dialer{
		Timeout:   2 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
}

// newPlayer returns a client with its own cookie jar so every worker is a
// distinct browser to the server.
func newPlayer() *http.Client {
	jar, _ := cookiejar.New(nil)
	return &http.Client{Timeout: 5 * time.Second, Transport: transport, Jar: jar}
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
	throttled int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== Carhoot Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n\n", numWorkers, testDuration)

	fmt.Print("Waiting for server... ")
	probe := newPlayer()
	for i := 0; i < 30; i++ {
		resp, err := probe.Get(baseURL + "/health")
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

	fmt.Println("\n--- Phase 1: Daily puzzle (50% GET, 50% guess) ---")
	runPhase(testDuration, func(c *http.Client, rng *rand.Rand) result {
		if rng.Float64() < 0.5 {
			return doGet(c, "/api/puzzle")
		}
		return doGuess(c, rng)
	})

	fmt.Println("\n--- Phase 2: Mixed load (puzzle, rankings, matches) ---")
	runPhase(testDuration, func(c *http.Client, rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.40:
			return doGet(c, "/api/puzzle")
		case r < 0.60:
			return doGuess(c, rng)
		case r < 0.75:
			return doGet(c, "/api/ranking/daily")
		case r < 0.85:
			return doGet(c, "/api/ranking/monthly")
		default:
			return doMatch(c, rng)
		}
	})
}

func runPhase(duration time.Duration, workFn func(c *http.Client, rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			player := newPlayer()
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(player, rng)
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
			if r.status == http.StatusTooManyRequests {
				s.throttled++
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
	var totalOps, totalErrors, totalThrottled int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-26s %8s %6s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "429s", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 98))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors
		totalThrottled += s.throttled

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-26s %8d %6d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, s.throttled,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 98))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | Throttled: %d | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, totalThrottled, rps)
}

func do(c *http.Client, endpoint string, req *http.Request) (result, []byte) {
	start := time.Now()
	resp, err := c.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}, nil
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	// game rule rejections (409, 423) and throttling are expected under load
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode >= 500}, body
}

func doGet(c *http.Client, path string) result {
	req, _ := http.NewRequest(http.MethodGet, baseURL+path, nil)
	r, _ := do(c, "GET "+path, req)
	return r
}

func post(c *http.Client, path, endpoint string, payload any) (result, []byte) {
	data, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return do(c, endpoint, req)
}

func doGuess(c *http.Client, rng *rand.Rand) result {
	mode := "normal"
	if rng.Float64() < 0.3 {
		mode = "limited"
	}
	r, _ := post(c, "/api/puzzle/guess", "POST /api/puzzle/guess", map[string]string{
		"mode":     mode,
		"value":    brands[rng.Intn(len(brands))],
		"nickname": fmt.Sprintf("load_%d", rng.Intn(1000)),
	})
	return r
}

func doMatch(c *http.Client, rng *rand.Rand) result {
	r, body := post(c, "/api/match", "POST /api/match", map[string][]string{
		"players": {"Ana", "Luis"},
	})
	if r.status != http.StatusCreated {
		return r
	}
	var match struct {
		ID string `json:"id"`
	}
	if json.Unmarshal(body, &match) != nil || match.ID == "" {
		r.err = true
		return r
	}
	r, _ = post(c, "/api/match/"+match.ID+"/guess", "POST /api/match/{id}/guess", map[string]string{
		"brand": brands[rng.Intn(len(brands))],
		"year":  fmt.Sprintf("%d", 1970+rng.Intn(50)),
	})
	return r
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
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
