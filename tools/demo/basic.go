package demo

import (
	"context"
	"fmt"

	"github.com/petasbytes/toolloop/tools"
)

type weatherArgs struct {
	Location string `json:"location" jsonschema_description:"The city name or location"`
	Units    string `json:"units" jsonschema:"default=metric,enum=metric,enum=imperial,enum=standard" jsonschema_description:"The units to use"`
}

type Weather struct {
	Location    string `json:"location"`
	Temperature int    `json:"temperature"`
	Conditions  string `json:"conditions"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"wind_speed"`
	Units       string `json:"units"`
	Timestamp   string `json:"timestamp"`
}

type searchArgs struct {
	Query      string `json:"query" jsonschema_description:"The search query"`
	NumResults int    `json:"num_results" jsonschema:"default=3" jsonschema_description:"Number of results to return"`
}

type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

type SearchResults struct {
	Query     string         `json:"query"`
	Results   []SearchResult `json:"results"`
	Timestamp string         `json:"timestamp"`
}

type addArgs struct {
	A float64 `json:"a" jsonschema_description:"First addend"`
	B float64 `json:"b" jsonschema_description:"Second addend"`
}

func registerBasic(reg *tools.Registry, d Deps) error {
	now := func() string { return d.Now().Format(timeLayout) }

	if err := reg.Register("get_current_time", tools.Func(func(context.Context, struct{}) (string, error) {
		return now(), nil
	}), "Get the current date and time."); err != nil {
		return err
	}

	if err := reg.Register("get_weather", tools.Func(func(_ context.Context, in weatherArgs) (Weather, error) {
		temp := 72
		if in.Units == "metric" {
			temp = 22
		}
		// Mock data.
		return Weather{
			Location:    in.Location,
			Temperature: temp,
			Conditions:  "Sunny",
			Humidity:    65,
			WindSpeed:   10,
			Units:       in.Units,
			Timestamp:   now(),
		}, nil
	}), "Get the current weather for a location."); err != nil {
		return err
	}

	if err := reg.Register("search_web", tools.Func(func(_ context.Context, in searchArgs) (SearchResults, error) {
		all := []SearchResult{
			{
				Title:   "Result 1 for " + in.Query,
				URL:     "https://example.com/result1?q=" + in.Query,
				Snippet: fmt.Sprintf("This is a sample result for the query '%s'.", in.Query),
			},
			{
				Title:   "Result 2 for " + in.Query,
				URL:     "https://example.com/result2?q=" + in.Query,
				Snippet: fmt.Sprintf("Another sample result for '%s' with different information.", in.Query),
			},
			{
				Title:   "Result 3 for " + in.Query,
				URL:     "https://example.com/result3?q=" + in.Query,
				Snippet: fmt.Sprintf("A third sample result providing information about '%s'.", in.Query),
			},
		}
		n := min(max(in.NumResults, 0), len(all))
		return SearchResults{Query: in.Query, Results: all[:n], Timestamp: now()}, nil
	}), "Perform a web search for the given query."); err != nil {
		return err
	}

	return reg.Register("add", tools.Func(func(_ context.Context, in addArgs) (float64, error) {
		return in.A + in.B, nil
	}), "Add two numbers and return the sum.")
}
