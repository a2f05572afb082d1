package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"venuebooking/internal/auth"
	"venuebooking/internal/user"
	"venuebooking/internal/venue"
	"venuebooking/pkg/config"
	"venuebooking/pkg/db"
)

// devflow seeds a student, an sa staff member, an admin and an sa venue,
// then walks one booking through the approval flow over HTTP.
func main() {
	baseURL := flag.String("base-url", "", "API base url (defaults to http://localhost<HTTP_ADDR>)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fail("config", err)
	}
	if *baseURL == "" {
		*baseURL = defaultBaseURL(cfg.HTTPAddr)
	}

	ctx := context.Background()
	pool, err := db.Open(ctx, cfg)
	if err != nil {
		fail("db open", err)
	}
	defer pool.Close()

	if cfg.MigrationsPath != "" {
		if err := db.Migrate(cfg.MigrationsPath, cfg); err != nil {
			fail("migrate", err)
		}
	}

	users := user.NewRepository(pool)
	student, err := users.Upsert(ctx, "student@uni.test", "Dev Student", "student", "")
	if err != nil {
		fail("seed student", err)
	}
	staff, err := users.Upsert(ctx, "sa-staff@uni.test", "Dev SA Staff", "staff", venue.DepartmentSA)
	if err != nil {
		fail("seed staff", err)
	}
	admin, err := users.Upsert(ctx, "admin@uni.test", "Dev Admin", "admin", "")
	if err != nil {
		fail("seed admin", err)
	}

	hall, err := venue.NewRepository(pool).Upsert(ctx, venue.Venue{
		Name:        "Dev Hall",
		Category:    "hall",
		Capacity:    200,
		HandledBy:   venue.DepartmentSA,
		HourlyRate:  decimal.RequireFromString("0"),
		IsAvailable: true,
	})
	if err != nil {
		fail("seed venue", err)
	}

	c := client{base: strings.TrimRight(*baseURL, "/"), cfg: cfg}
	studentTok := c.token(student)
	staffTok := c.token(staff)
	adminTok := c.token(admin)

	start := time.Now().Add(72 * time.Hour).Truncate(time.Hour)
	var created struct {
		ID          string `json:"id"`
		BookingCode string `json:"bookingCode"`
		Status      string `json:"status"`
	}
	c.do(studentTok, http.MethodPost, "/v1/bookings", map[string]any{
		"venueId":        hall.ID,
		"title":          "Dev orientation",
		"startTime":      start,
		"endTime":        start.Add(2 * time.Hour),
		"attendeesCount": 50,
	}, &created)
	fmt.Printf("created booking %s (%s) status=%s\n", created.BookingCode, created.ID, created.Status)

	path := "/v1/bookings/" + created.ID
	c.step(staffTok, http.MethodPost, path+"/review", map[string]any{"comment": ""})
	c.step(staffTok, http.MethodPost, path+"/request-documents", map[string]any{"comment": "Please attach the dean approval letter"})

	var doc struct {
		ID string `json:"id"`
	}
	c.do(studentTok, http.MethodPost, path+"/documents", map[string]any{
		"fileUrl":      "https://files.uni.test/dean-approval.pdf",
		"documentType": "dean_approval",
	}, &doc)
	c.step(staffTok, http.MethodPost, path+"/documents/"+doc.ID+"/verify", nil)
	c.step(staffTok, http.MethodPost, path+"/approve", map[string]any{"comment": "Approved for the requested slot"})
	c.step(adminTok, http.MethodPost, path+"/complete", nil)
	c.step(staffTok, http.MethodGet, path+"/history", nil)
}

type client struct {
	base string
	cfg  config.Config
}

func (c client) token(u *user.User) string {
	tok, err := auth.Issue(c.cfg.Auth.Secret, c.cfg.Auth.Issuer, u.ID, u.Email, u.Role, c.cfg.Auth.TTL, time.Now())
	if err != nil {
		fail("issue token", err)
	}
	return tok
}

func (c client) step(token, method, path string, body any) {
	var out json.RawMessage
	c.do(token, method, path, body, &out)
	fmt.Printf("%s %s -> %s\n", method, path, string(out))
}

func (c client) do(token, method, path string, body any, out any) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			fail("encode body", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.base+path, rdr)
	if err != nil {
		fail("new request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := (&http.Client{Timeout: 10 * time.Second}).Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tip: is the API running at %s?\n", c.base)
		fail(method+" "+path, err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fmt.Fprintf(os.Stderr, "%s %s status=%d body=%s\n", method, path, resp.StatusCode, string(b))
		os.Exit(1)
	}
	if err := json.Unmarshal(b, out); err != nil {
		fail("decode response", err)
	}
}

func defaultBaseURL(httpAddr string) string {
	// httpAddr is typically ":8081" or "0.0.0.0:8081".
	addr := strings.TrimSpace(httpAddr)
	if addr == "" {
		addr = ":8081"
	}
	switch {
	case strings.HasPrefix(addr, ":"):
		return "http://localhost" + addr
	case strings.HasPrefix(addr, "0.0.0.0:"):
		return "http://localhost" + strings.TrimPrefix(addr, "0.0.0.0")
	default:
		return "http://" + addr
	}
}

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", what, err)
	os.Exit(1)
}
