package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"nordcast/internal/forecast"
	"nordcast/pkg/locationforecast"
)

func usage() {
	fmt.Println("Usage: nordcast <lat> <lon> [altitude] [-days=N]")
	fmt.Println("Examples: nordcast 59.9139 10.7522")
	fmt.Println("          nordcast 50.0880 14.4207 202")
	fmt.Println("          nordcast 59.9139 10.7522 -days=3")
	fmt.Println()
	fmt.Println("NORDCAST_USER_AGENT must identify you to the origin API,")
	fmt.Println("e.g. \"nordcast/1.0 you@example.com\".")
}

func main() {
	args := os.Args[1:]
	days := 7

	var positional []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "-days=") {
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "-days="))
			if err != nil || n < 1 || n > 9 {
				fmt.Println("Error: -days must be a number between 1 and 9")
				return
			}
			days = n
			continue
		}
		positional = append(positional, arg)
	}

	if len(positional) < 2 || len(positional) > 3 {
		usage()
		return
	}

	userAgent := os.Getenv("NORDCAST_USER_AGENT")
	if userAgent == "" {
		fmt.Println("Error: NORDCAST_USER_AGENT is not set")
		return
	}

	lat, err := strconv.ParseFloat(positional[0], 64)
	if err != nil {
		fmt.Printf("Error: invalid latitude %q\n", positional[0])
		return
	}
	lon, err := strconv.ParseFloat(positional[1], 64)
	if err != nil {
		fmt.Printf("Error: invalid longitude %q\n", positional[1])
		return
	}

	client, err := locationforecast.NewClient(userAgent)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var response *locationforecast.Response
	if len(positional) == 3 {
		alt, err := strconv.Atoi(positional[2])
		if err != nil {
			fmt.Printf("Error: invalid altitude %q\n", positional[2])
			return
		}
		response, err = client.GetWithAltitude(ctx, lat, lon, alt)
		if err != nil {
			reportFetchError(err)
			return
		}
	} else {
		response, err = client.Get(ctx, lat, lon)
		if err != nil {
			reportFetchError(err)
			return
		}
	}

	body, err := response.Body()
	if err != nil {
		fmt.Printf("Error decoding forecast: %v\n", err)
		return
	}

	displayDaily(lat, lon, forecast.BuildDaily(body, time.Local, days))
}

func reportFetchError(err error) {
	if errors.Is(err, locationforecast.ErrRateLimited) {
		fmt.Println("Error: rate limited by the origin API; try again later")
		return
	}
	fmt.Printf("Error fetching forecast: %v\n", err)
}

func displayDaily(lat, lon float64, daySummaries []forecast.DaySummary) {
	header := fmt.Sprintf("Forecast for %.4f, %.4f:", lat, lon)
	fmt.Printf("%s\n", header)
	fmt.Printf("%s\n", strings.Repeat("-", len(header)))

	titler := cases.Title(language.English)

	for _, day := range daySummaries {
		fmt.Printf("%s %s: ",
			day.Date.Format("Mon"),
			day.Date.Format("2006-01-02"))
		fmt.Printf("%-25s", titler.String(symbolLabel(day.SymbolCode)))
		if day.TempMax != nil {
			fmt.Printf(" High: %4.1f°C.", *day.TempMax)
		}
		if day.TempMin != nil {
			fmt.Printf(" Low: %4.1f°C.", *day.TempMin)
		}
		if day.Precipitation > 0 {
			fmt.Printf(" Precip: %.1f mm.", day.Precipitation)
		}
		if day.MaxWindSpeed > 0 {
			fmt.Printf(" Max winds: %4.1f m/s.", day.MaxWindSpeed)
		}
		fmt.Println()
	}
}

// symbolLabel turns a symbol code like "partlycloudy_day" into printable
// text.
func symbolLabel(code string) string {
	if code == "" {
		return "unknown"
	}
	code = strings.SplitN(code, "_", 2)[0]
	return code
}
