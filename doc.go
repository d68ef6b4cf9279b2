// Package pauwcheck is a conformance harness for the line-oriented ASCII
// serial protocol of a four-pin Van der Pauw router.
//
// The device maps four signal roles (IP, IM, VP, VM) onto pins A-D and answers
// PING, CFG n, SET, STATE? and HELP. The harness issues a fixed command
// sequence, frames the replies out of an unbuffered byte stream and checks
// every reply against a fixed preset table.
//
// Features:
//   - Deadline-bounded line reads; no call blocks indefinitely on a silent device
//   - Raw termios link on Linux with a killable poll, plus go.bug.st/serial and
//     tarm/serial drivers
//   - Continue-on-failure sequencing: every check runs exactly once
//   - Port auto-detection for the usual board fingerprints
//
// Example usage:
//
//	link, err := pauwcheck.Open(pauwcheck.Config{
//	    Device:   "/dev/ttyACM0",
//	    BaudRate: 115200,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer link.Close()
//
//	ch := pauwcheck.NewChannel(slog.Default(), link)
//	runner := pauwcheck.NewRunner(slog.Default(), ch, pauwcheck.Options{WaitReady: true})
//	rep, err := runner.Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("failed:", rep.Failed())
package pauwcheck
