package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"spreadedge/internal/market"
	"spreadedge/internal/shared/config"
	"spreadedge/internal/shared/constants"
	"spreadedge/pkg/cache"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// ProbeResult is one timed request against a running server
type ProbeResult struct {
	Endpoint     string
	ResponseTime time.Duration
	DataSize     int
	StatusCode   int
	Error        string
}

func (r ProbeResult) Success() bool {
	return r.Error == "" && r.StatusCode >= 200 && r.StatusCode < 400
}

type Prober struct {
	BaseURL string
	Client  *http.Client
	Redis   *redis.Client
	Results []ProbeResult
}

// Calls every market endpoint twice against a running server and reports
// whether the second call was served from the quote cache.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	baseURL := os.Getenv("PROBE_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Port + cfg.GetAPIBasePath()
	}

	p := &Prober{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Client:  &http.Client{Timeout: 30 * time.Second},
	}

	fmt.Println("🧪 Starting market cache probe...")
	fmt.Println("=================================")

	if cfg.Redis.Enabled {
		client, err := cache.Connect(context.Background(), cache.Config{
			Address:  cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatalf("❌ Redis connection failed: %v", err)
		}
		defer client.Close()
		p.Redis = client
		fmt.Println("✅ Redis connection: OK")
	} else {
		fmt.Println("ℹ️  Redis disabled, key checks skipped")
	}

	endpoints := []string{"/market/analysis", "/signals"}
	for _, class := range market.AssetClasses {
		endpoints = append(endpoints, "/market/"+string(class))
	}

	for _, endpoint := range endpoints {
		fmt.Printf("\n🔍 Probing: %s\n", endpoint)

		first := p.probe(endpoint)
		second := p.probe(endpoint)
		p.Results = append(p.Results, first, second)

		if first.Success() && second.Success() && first.ResponseTime > 0 {
			improvement := float64(first.ResponseTime-second.ResponseTime) / float64(first.ResponseTime) * 100
			fmt.Printf("   📈 Second call: %.1f%% faster (%v -> %v)\n", improvement, first.ResponseTime, second.ResponseTime)
		}
	}

	p.checkKeys()
	p.report()
}

func (p *Prober) probe(endpoint string) ProbeResult {
	result := ProbeResult{Endpoint: endpoint}

	start := time.Now()
	resp, err := p.Client.Get(p.BaseURL + endpoint)
	if err != nil {
		result.Error = err.Error()
		fmt.Printf("   ❌ %v\n", err)
		return result
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	result.ResponseTime = time.Since(start)
	result.StatusCode = resp.StatusCode
	result.DataSize = len(body)
	if err != nil {
		result.Error = err.Error()
	} else if !result.Success() {
		result.Error = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}

	icon := "✅"
	if !result.Success() {
		icon = "❌"
	}
	fmt.Printf("   %s HTTP %d %v (%d bytes)\n", icon, result.StatusCode, result.ResponseTime, result.DataSize)
	return result
}

func (p *Prober) checkKeys() {
	if p.Redis == nil {
		return
	}

	fmt.Println("\n🔑 Quote cache keys")
	ctx := context.Background()
	for _, class := range market.AssetClasses {
		key := constants.BuildMarketQuotesKey(string(class))
		ttl, err := p.Redis.TTL(ctx, key).Result()
		switch {
		case err != nil:
			fmt.Printf("   ❌ %s: %v\n", key, err)
		case ttl < 0:
			fmt.Printf("   💾 %s: missing\n", key)
		default:
			fmt.Printf("   🔥 %s: expires in %v\n", key, ttl.Round(time.Second))
		}
	}
}

func (p *Prober) report() {
	fmt.Println("\n📊 Summary")
	fmt.Println("==========")

	passed := 0
	var total time.Duration
	for _, r := range p.Results {
		if r.Success() {
			passed++
			total += r.ResponseTime
		}
	}

	fmt.Printf("Requests: %d, succeeded: %d\n", len(p.Results), passed)
	if passed > 0 {
		fmt.Printf("Average response time: %v\n", total/time.Duration(passed))
	}
	if passed < len(p.Results) {
		os.Exit(1)
	}
}
