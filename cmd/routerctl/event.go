package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	eventRaw  string
	eventFile string
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Enqueue events onto the router's intake queue",
}

var eventEnqueueCmd = &cobra.Command{
	Use:   "enqueue",
	Short: "Enqueue one raw event",
	RunE:  runEventEnqueue,
}

var eventReplayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Stream newline-delimited raw events from a file into the intake queue",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventReplay,
}

func init() {
	eventEnqueueCmd.Flags().StringVar(&eventRaw, "event", "", "raw event payload (required)")
	eventEnqueueCmd.MarkFlagRequired("event")

	eventCmd.AddCommand(eventEnqueueCmd, eventReplayCmd)
}

func runEventEnqueue(cmd *cobra.Command, args []string) error {
	resp, err := dispatch(serverAddr, "enqueue_event", map[string]any{"event": eventRaw})
	if err != nil {
		return err
	}
	fmt.Println(resp.Message)
	return nil
}

func runEventReplay(cmd *cobra.Command, args []string) error {
	eventFile = args[0]

	f, err := os.Open(eventFile)
	if err != nil {
		return fmt.Errorf("open %s: %w", eventFile, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", eventFile, err)
	}

	bar := progressbar.DefaultBytes(stat.Size(), "replaying events")

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var sent, failed int
	for scanner.Scan() {
		line := scanner.Text()
		bar.Add(len(line) + 1)
		if line == "" {
			continue
		}

		resp, err := dispatch(serverAddr, "enqueue_event", map[string]any{"event": line})
		if err != nil {
			return fmt.Errorf("replay: %w", err)
		}
		if resp.Message == "Ok" {
			sent++
		} else {
			failed++
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", eventFile, err)
	}

	fmt.Printf("\nreplayed %d events (%d failed)\n", sent, failed)
	return nil
}
