package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/limaJavier/autoscheduler/pkg/model"
	"github.com/samber/lo"
)

var validFormats = []string{"json", "grid"}

func main() {
	// Define arguments
	filePathPtr := flag.String("file", "", "Path to the input catalog")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	maxPtr := flag.Int("max", model.DefaultMaxTimetables, "Maximum number of timetables to generate")
	strictPtr := flag.Bool("strict", false, "Fail when a section references a slot without timing data instead of treating it as conflict-free")
	slotsPtr := flag.String("slots", "", "Path to a YAML or JSON slot-timings file; overrides the slots of the catalog")
	formatPtr := flag.String("format", "json", `Output format. Allowed values are: "json" (the timetables as generated) and "grid" (weekly sessions of every timetable), where "json" is the default`)
	selectPtr := flag.String("select", "", "Comma-separated course codes to schedule, in order; overrides the selection of the catalog")
	flag.Parse()
	filePath := *filePathPtr
	outFile := *outFilePathPtr
	format := strings.ToLower(*formatPtr)

	// Validate arguments
	if filePath == "" {
		log.Fatal("an input file must be specified")
	} else if *maxPtr <= 0 {
		log.Fatalf("max must be greater than 0: %v", *maxPtr)
	} else if !slices.Contains(validFormats, format) {
		log.Fatalf("%v is not a valid format", format)
	}

	// Extract input
	rawInput, err := model.RawInputFromJson(filePath)
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}
	if *selectPtr != "" {
		rawInput.Selected = lo.Map(strings.Split(*selectPtr, ","), func(code string, _ int) string { return strings.TrimSpace(code) })
	}
	if *slotsPtr != "" {
		timings, err := model.SlotTimingsFromFile(*slotsPtr)
		if err != nil {
			log.Fatalf("cannot parse slots file: %v", err)
		}
		rawInput.Slots = timings
	}
	input, err := model.ProcessRawInput(rawInput)
	if err != nil {
		log.Fatalf("invalid input file: %v", err)
	}
	if missing := model.MissingSlots(input); len(missing) > 0 {
		log.Printf("no timing data for slots %v, conflicts involving them are not detected", missing)
	}

	// Build timetables
	scheduler := model.NewBacktrackingScheduler(*maxPtr, *strictPtr)
	timetables, combinations, truncated, err := scheduler.Build(context.Background(), input)

	if err != nil {
		log.Fatalf("an error occurred during timetable construction: %v", err)
	} else if len(timetables) == 0 {
		fmt.Printf("Combinations: %v\n", combinations)
		os.Exit(20)
	}

	// Verify timetables correctness
	if !scheduler.Verify(timetables, input) {
		fmt.Printf("Combinations: %v\n", combinations)
		os.Exit(15)
	}

	// Build output from timetables
	var output []byte
	switch format {
	case "json":
		output, err = json.Marshal(timetables)
		if err != nil {
			log.Fatalf("an error occurred while building output json: %v", err)
		}
	case "grid":
		output = grid(timetables, input.SlotTimings)
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if outFile == "" {
		fmt.Println(string(output))
	} else {
		err := os.WriteFile(outFile, output, 0666)
		if err != nil {
			log.Fatalf("an error occurred while writing to the output file: %v", err)
		}
	}

	fmt.Printf("Timetables: %v\n", len(timetables))
	fmt.Printf("Combinations: %v\n", combinations)
	fmt.Printf("Credits: %v\n", model.TotalCredits(input.Courses))
	if truncated {
		fmt.Printf("Truncated: search stopped at %v timetables\n", *maxPtr)
	}
	os.Exit(10)
}

func grid(timetables []model.Timetable, timings model.SlotTimings) []byte {
	var builder strings.Builder
	writer := tabwriter.NewWriter(&builder, 0, 4, 2, ' ', 0)
	for _, timetable := range timetables {
		fmt.Fprintf(writer, "Timetable %v\n", timetable.Id)
		for _, session := range model.Sessions(timetable, timings) {
			kind := "theory"
			if session.Lab {
				kind = "lab"
			}
			fmt.Fprintf(writer, "\t%v\t%v-%v\t%v\t%v\t%v\t%v\n", session.Day, session.Start, session.End, session.CourseCode, kind, session.Slot, session.Faculty)
		}
		fmt.Fprintln(writer)
	}
	writer.Flush()
	return []byte(builder.String())
}
