package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

var (
	cyan   = color.New(color.FgCyan)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	faint  = color.New(color.Faint)
)

func main() {
	server := flag.String("server", "http://localhost:8080", "Metamind server URL")
	verbose := flag.Bool("verbose", false, "Print the metacognitive report with each reply")
	flag.Parse()

	fmt.Println("Metamind CLI Chat")
	fmt.Printf("Server: %s\n", *server)
	fmt.Println("Type 'exit' or 'quit' to leave. Use 'feedback: <text>' to rate the last reply.")
	fmt.Println("---")

	client := &http.Client{Timeout: 30 * time.Second}

	sessionID, err := createSession(client, *server)
	if err != nil {
		red.Fprintf(os.Stderr, "Failed to create session: %v\n", err)
		os.Exit(1)
	}
	faint.Printf("session %s\n", sessionID)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			printInsights(client, *server, sessionID)
			fmt.Println("Bye!")
			return
		}
		if rest, ok := strings.CutPrefix(input, "feedback:"); ok {
			sendFeedback(client, *server, sessionID, strings.TrimSpace(rest))
			continue
		}

		sendMessage(client, *server, sessionID, input, *verbose)
	}
	printInsights(client, *server, sessionID)
}

func createSession(client *http.Client, server string) (string, error) {
	resp, err := client.Post(server+"/api/sessions", "application/json", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.ID, nil
}

func sendMessage(client *http.Client, server, sessionID, content string, verbose bool) {
	body, _ := json.Marshal(map[string]string{"message": content})
	resp, err := client.Post(
		server+"/api/sessions/"+sessionID+"/messages",
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		red.Fprintf(os.Stderr, "Request failed: %v\n", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		red.Fprintf(os.Stderr, "Server error (%d): %s\n", resp.StatusCode, string(data))
		return
	}

	var result struct {
		Response string `json:"response"`
		Report   struct {
			SelfAssessment struct {
				Confidence struct {
					Label   string  `json:"label"`
					Numeric float64 `json:"numeric"`
				} `json:"confidence"`
				ProcessingMode string `json:"processing_mode"`
			} `json:"system_self_assessment"`
			UserModel struct {
				EmotionalState string `json:"emotional_state"`
			} `json:"user_model_snapshot"`
			Suggestions []string `json:"improvement_suggestions"`
		} `json:"metacognitive_report"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		red.Fprintf(os.Stderr, "Failed to parse response: %v\n", err)
		return
	}

	cyan.Print("[metamind] ")
	fmt.Println(result.Response)

	if verbose {
		r := result.Report
		faint.Printf("  confidence: %s (%.2f) | mode: %s | emotion: %s\n",
			r.SelfAssessment.Confidence.Label,
			r.SelfAssessment.Confidence.Numeric,
			r.SelfAssessment.ProcessingMode,
			r.UserModel.EmotionalState,
		)
		for _, s := range r.Suggestions {
			faint.Printf("  suggestion: %s\n", s)
		}
	}
}

func sendFeedback(client *http.Client, server, sessionID, feedback string) {
	if feedback == "" {
		yellow.Println("Nothing to send.")
		return
	}
	body, _ := json.Marshal(map[string]string{"feedback": feedback})
	resp, err := client.Post(
		server+"/api/sessions/"+sessionID+"/feedback",
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		red.Fprintf(os.Stderr, "Request failed: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var record struct {
		Sentiment string   `json:"feedback_type"`
		Lessons   []string `json:"lessons_learned"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		red.Fprintf(os.Stderr, "Failed to parse response: %v\n", err)
		return
	}
	yellow.Printf("feedback recorded as %s\n", record.Sentiment)
	for _, l := range record.Lessons {
		faint.Printf("  lesson: %s\n", l)
	}
}

func printInsights(client *http.Client, server, sessionID string) {
	resp, err := client.Get(server + "/api/sessions/" + sessionID + "/insights")
	if err != nil {
		return
	}
	defer resp.Body.Close()

	var insights struct {
		TotalInteractions   int     `json:"total_interactions"`
		AverageQualityScore float64 `json:"average_quality_score"`
		CommonTopics        []struct {
			Topic string `json:"topic"`
			Count int    `json:"count"`
		} `json:"common_topics"`
		PendingImprovements []string `json:"pending_improvements"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&insights); err != nil {
		return
	}

	fmt.Println("\nSession insights:")
	fmt.Printf("  interactions: %d | avg quality: %.2f\n",
		insights.TotalInteractions, insights.AverageQualityScore)
	for _, tc := range insights.CommonTopics {
		faint.Printf("  topic %s (%d)\n", tc.Topic, tc.Count)
	}
	for _, s := range insights.PendingImprovements {
		faint.Printf("  pending: %s\n", s)
	}
}
