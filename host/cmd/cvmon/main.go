// cvmon tails the module's USB CDC debug stream. In plain mode it
// just prints every line. With -cal it also collects the averaged
// readings the calibration task prints and summarizes the observed
// extremes per channel on exit, ready to paste into a board profile.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"eurocore/host/serial"
)

var (
	device = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud   = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	cal    = flag.Bool("cal", false, "Collect calibration readings and summarize on exit")
	quiet  = flag.Bool("quiet", false, "With -cal, suppress non-calibration lines")
)

type calStats struct {
	min, max uint32
	count    int
}

func main() {
	flag.Parse()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud
	cfg.ReadTimeout = 0 // block; a timeout would end the line scanner

	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	fmt.Printf("Listening on %s (Ctrl-C to stop)\n", *device)

	stats := make(map[int]*calStats)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	// Buffered so the reader goroutine is not left blocked on a send
	// when Ctrl-C ends the select loop first.
	lines := make(chan string, 64)
	go func() {
		scanner := bufio.NewScanner(port)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

loop:
	for {
		select {
		case <-sig:
			break loop
		case line, ok := <-lines:
			if !ok {
				break loop
			}
			ch, value, isCal := parseCalLine(line)
			if isCal {
				record(stats, ch, value)
			}
			if !*quiet || isCal {
				fmt.Println(line)
			}
		}
	}

	if *cal {
		printSummary(stats)
	}
}

// parseCalLine matches the calibration task's output, "cal <ch> = <avg>".
func parseCalLine(line string) (ch int, value uint32, ok bool) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) != 4 || fields[0] != "cal" || fields[2] != "=" {
		return 0, 0, false
	}
	ch, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(fields[3], 10, 32)
	if err != nil {
		return 0, 0, false
	}
	return ch, uint32(v), true
}

func record(stats map[int]*calStats, ch int, value uint32) {
	s := stats[ch]
	if s == nil {
		s = &calStats{min: value, max: value}
		stats[ch] = s
	}
	if value < s.min {
		s.min = value
	}
	if value > s.max {
		s.max = value
	}
	s.count++
}

var channelNames = map[int]string{0: "CV1", 1: "CV2", 2: "Pot"}

func printSummary(stats map[int]*calStats) {
	if len(stats) == 0 {
		fmt.Println("\nNo calibration readings seen.")
		return
	}
	fmt.Println("\nCalibration summary:")
	for ch := 0; ch < 3; ch++ {
		s := stats[ch]
		if s == nil {
			continue
		}
		name := channelNames[ch]
		fmt.Printf("  %-3s  min=%d  max=%d  (%d readings)\n", name, s.min, s.max, s.count)
	}
	fmt.Println("Feed 0V and the rail extremes to each input, then copy the")
	fmt.Println("extremes into the board profile's Calibration.")
}
