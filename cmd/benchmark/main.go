package main

import (
	"bytes"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/limaJavier/autoscheduler/pkg/model"

	"github.com/samber/lo"
)

const (
	executablePath         = "../../bin/autoscheduler"
	catalogDirectory       = "../../testdata/catalogs/"
	MB             float32 = 1024
)

type ResultType int

const (
	generated ResultType = iota
	truncated
	empty
)

var (
	caps        = []int{50, model.DefaultMaxTimetables, 5000}
	resultTypes = map[ResultType]string{
		generated: "generated",
		truncated: "truncated",
		empty:     "empty",
	}
)

type CatalogMetadata struct {
	Name         string
	Courses      int
	Sections     int
	Labs         int
	Combinations uint64
}

type BenchmarkResult struct {
	Catalog       CatalogMetadata
	Max           int
	Timetables    int
	Duration      int64
	Memory        float32
	CpuPercentage int64
	Result        ResultType
}

func main() {
	directoryPtr := flag.String("dir", catalogDirectory, "Directory holding the catalogs to benchmark")
	outPtr := flag.String("out", "benchmark_results.csv", "Path of the CSV file with the results")
	flag.Parse()

	catalogs := getCatalogs(*directoryPtr)
	results := make([]BenchmarkResult, 0, len(catalogs)*len(caps))

	for _, catalog := range catalogs {
		for _, max := range caps {
			fmt.Printf("Benchmarking catalog \"%v\" with max \"%v\"\n", catalog.Name, max)

			timetables, duration, maxMemory, cpuPercentage, result := measure(catalog.Name, max)

			results = append(results, BenchmarkResult{
				Catalog:       catalog,
				Max:           max,
				Timetables:    timetables,
				Duration:      duration,
				Memory:        maxMemory,
				CpuPercentage: cpuPercentage,
				Result:        result,
			})
		}
	}

	toCsv(*outPtr, results)
}

func getCatalogs(directory string) []CatalogMetadata {
	files, err := os.ReadDir(directory)
	if err != nil {
		log.Fatalf("cannot read directory: %v", err)
	}

	catalogs := make([]CatalogMetadata, 0, len(files))
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}

		filename := filepath.Join(directory, file.Name())
		input, err := model.InputFromJson(filename)
		if err != nil {
			log.Fatalf("cannot parse input file: %v", err)
		}
		sections := lo.FlatMap(input.Courses, func(course model.Course, _ int) []model.Section { return course.Sections })

		catalogs = append(catalogs, CatalogMetadata{
			Name:         filename,
			Courses:      len(input.Courses),
			Sections:     len(sections),
			Labs:         lo.CountBy(sections, func(section model.Section) bool { return section.LabSlot != "" }),
			Combinations: model.Combinations(input),
		})
	}

	return catalogs
}

func measure(catalogFile string, max int) (timetables int, duration int64, maxMemory float32, cpuPercentage int64, result ResultType) {
	cmd := exec.Command("/usr/bin/time", "-v", executablePath, "-file", catalogFile, "-max", fmt.Sprint(max), "-out", os.DevNull)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stdErr bytes.Buffer
	cmd.Stderr = &stdErr

	cmd.Run()
	if cmd.ProcessState.ExitCode() != 10 && cmd.ProcessState.ExitCode() != 20 {
		log.Fatalf("an error occurred during the execution \"autoscheduler\" at catalog \"%v\" with max \"%v\": %v\n", catalogFile, max, stdErr.String())
	} else if cmd.ProcessState.ExitCode() == 20 {
		result = empty
	} else if strings.Contains(stdOut.String(), "Truncated:") {
		result = truncated
	} else {
		result = generated
	}
	timetables = parseTimetables(stdOut.String())

	splits := strings.Split(stdErr.String(), "\n")
	getLine := func(substr string) string {
		line, ok := lo.Find(splits, func(line string) bool {
			return strings.Contains(strings.ToLower(line), substr)
		})
		if !ok {
			log.Fatalf("Substring \"%v\" could not be found", substr)
		}
		return line
	}

	duration = parseDurationLine(getLine("wall clock"))
	maxMemory = parseMemoryLine(getLine("maximum resident set size"))
	cpuPercentage = parseCpuPercentageLine(getLine("percent of cpu"))

	return timetables, duration, maxMemory, cpuPercentage, result
}

func toCsv(path string, results []BenchmarkResult) {
	file, err := os.Create(path)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Catalog", "Courses", "Sections", "Labs", "Combinations", "Max", "Timetables", "Duration(ms)", "Memory(MB)", "CPU(%)", "Result"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		record := []string{
			result.Catalog.Name,
			fmt.Sprintf("%d", result.Catalog.Courses),
			fmt.Sprintf("%d", result.Catalog.Sections),
			fmt.Sprintf("%d", result.Catalog.Labs),
			fmt.Sprintf("%d", result.Catalog.Combinations),
			fmt.Sprintf("%d", result.Max),
			fmt.Sprintf("%d", result.Timetables),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%.1f", result.Memory),
			fmt.Sprintf("%d", result.CpuPercentage),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}

// parseTimetables reads the "Timetables: N" summary line printed by the CLI, zero when absent
func parseTimetables(stdOut string) int {
	line, ok := lo.Find(strings.Split(stdOut, "\n"), func(line string) bool {
		return strings.HasPrefix(line, "Timetables: ")
	})
	if !ok {
		return 0
	}
	return lo.Must(strconv.Atoi(strings.TrimPrefix(line, "Timetables: ")))
}

func parseDurationLine(line string) int64 {
	durationStr := strings.Split(line, "(h:mm:ss or m:ss):")[1][1:]
	return parseDuration(durationStr)
}

func parseDuration(durationStr string) int64 {
	parts := strings.Split(durationStr, ":")
	secondsStr := parts[len(parts)-1]
	secondsParts := strings.Split(secondsStr, ".")

	var duration int64
	if len(parts) == 3 { // h:mm:ss
		hours := lo.Must(strconv.Atoi(parts[0]))
		minutes := lo.Must(strconv.Atoi(parts[1]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(hours*3600+minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else if len(parts) == 2 { // m:ss
		minutes := lo.Must(strconv.Atoi(parts[0]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else {
		log.Fatalf("unexpected duration format: %v", durationStr)
	}
	return duration
}

// Maximum resident set size is reported in kilobytes
func parseMemoryLine(line string) float32 {
	memoryStr := strings.Split(line, ":")[1][1:]
	return float32(lo.Must(strconv.ParseFloat(memoryStr, 32))) / MB
}

func parseCpuPercentageLine(line string) int64 {
	percentageStr := strings.Split(line, ":")[1][1:]
	percentageStr = percentageStr[:len(percentageStr)-1]
	return int64(lo.Must(strconv.Atoi(percentageStr)))
}
