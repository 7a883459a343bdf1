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
	numPosts     = 20
)

var (
	baseURL   = envOr("BLOGD_URL", "http://127.0.0.1:3000")
	adminUser = envOr("BLOG_ADMIN_USERNAME", "admin")
	adminPass = os.Getenv("BLOG_ADMIN_PASSWORD")
)

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

type seededPost struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
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

// acceptedViews counts view requests the server acknowledged; after the run
// it must equal the views stored on the seeded posts.
var acceptedViews atomic.Int64

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	fmt.Println("=== blogd Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Posts: %d\n\n", numWorkers, testDuration, numPosts)
	if adminPass == "" {
		fmt.Println("BLOG_ADMIN_PASSWORD is required to seed posts")
		return
	}

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

	fmt.Println("\n--- Phase 1: Seeding posts (POST /api/admin/posts) ---")
	posts, err := seedPosts()
	if err != nil {
		fmt.Println("FAILED:", err)
		return
	}
	fmt.Printf("seeded %d posts\n", len(posts))

	fmt.Println("\n--- Phase 2: Mixed load (60% views, 40% reads) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.60:
			return doView(rng, posts)
		case r < 0.80:
			return doGetList()
		case r < 0.95:
			return doGetPost(rng, posts)
		default:
			return doGetSettings()
		}
	})

	fmt.Println("\n--- Phase 3: Read-heavy load (10% views, 90% reads) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doView(rng, posts)
		case r < 0.60:
			return doGetList()
		case r < 0.90:
			return doGetPost(rng, posts)
		default:
			return doGetSettings()
		}
	})

	fmt.Println("\n--- Verifying view counts ---")
	verifyViews(posts)

	fmt.Println("\n--- Cleanup ---")
	for _, p := range posts {
		req, _ := http.NewRequest(http.MethodDelete, baseURL+"/api/admin/posts/"+p.ID, nil)
		req.SetBasicAuth(adminUser, adminPass)
		if resp, err := httpClient.Do(req); err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}
	}
	fmt.Println("done")
}

func seedPosts() ([]seededPost, error) {
	run := time.Now().UnixNano()
	posts := make([]seededPost, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		body, _ := json.Marshal(map[string]any{
			"title":    fmt.Sprintf("Load test %d", i),
			"slug":     fmt.Sprintf("load-test-%d-%d", run, i),
			"content":  strings.Repeat("Ek kahani. ", 50),
			"author":   "loadtest",
			"category": "Kahani",
			"status":   "published",
		})
		req, _ := http.NewRequest(http.MethodPost, baseURL+"/api/admin/posts", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.SetBasicAuth(adminUser, adminPass)
		resp, err := httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		var p seededPost
		err = json.NewDecoder(resp.Body).Decode(&p)
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated || err != nil {
			return nil, fmt.Errorf("seed post %d: status %d", i, resp.StatusCode)
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func verifyViews(posts []seededPost) {
	var stored int64
	for _, p := range posts {
		req, _ := http.NewRequest(http.MethodGet, baseURL+"/api/admin/posts/"+p.ID, nil)
		req.SetBasicAuth(adminUser, adminPass)
		resp, err := httpClient.Do(req)
		if err != nil {
			fmt.Println("FAILED:", err)
			return
		}
		var got struct {
			Views int64 `json:"views"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&got)
		resp.Body.Close()
		stored += got.Views
	}
	accepted := acceptedViews.Load()
	status := "OK"
	if stored != accepted {
		status = "MISMATCH"
	}
	fmt.Printf("  accepted: %d | stored: %d | %s\n", accepted, stored, status)
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
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
					results <- workFn(rng)
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

func do(endpoint string, req *http.Request, want int) result {
	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != want}
}

func doView(rng *rand.Rand, posts []seededPost) result {
	p := posts[rng.Intn(len(posts))]
	req, _ := http.NewRequest(http.MethodPost, baseURL+"/api/posts/"+p.ID+"/view", nil)
	req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.%d.%d", rng.Intn(4), rng.Intn(250)))
	r := do("POST /api/posts/{id}/view", req, http.StatusOK)
	if !r.err {
		acceptedViews.Add(1)
	}
	return r
}

func doGetList() result {
	req, _ := http.NewRequest(http.MethodGet, baseURL+"/api/posts", nil)
	return do("GET /api/posts", req, http.StatusOK)
}

func doGetPost(rng *rand.Rand, posts []seededPost) result {
	p := posts[rng.Intn(len(posts))]
	req, _ := http.NewRequest(http.MethodGet, baseURL+"/api/posts/"+p.Slug, nil)
	return do("GET /api/posts/{slug}", req, http.StatusOK)
}

func doGetSettings() result {
	req, _ := http.NewRequest(http.MethodGet, baseURL+"/api/settings", nil)
	return do("GET /api/settings", req, http.StatusOK)
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
