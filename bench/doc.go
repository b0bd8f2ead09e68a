// Package bench measures the cost of a component's lifecycle phases.
//
// A Sampler drives a Host through a visible/hidden toggle, timing the gap
// between each render request and its commit. Depending on the Kind, the
// measured render is the mount, the update or the unmount of the component.
// The collected timings are summarized into descriptive statistics in
// milliseconds.
//
// # Quick Start
//
// The simulated host that ships with this module runs its own loop:
//
//	host, stop := bench.NewSimHost(bench.SimHostOptions{})
//	defer stop()
//
//	result, err := bench.Run(ctx, host, bench.Config{
//	    Kind:      bench.KindMount,
//	    Samples:   50,
//	    Component: "static",
//	    Props:     bench.Props{"mount": "2ms"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("mean %.3fms over %d samples\n", result.Mean, result.SampleCount)
//
// # Custom Hosts
//
// Any type implementing Host can be benchmarked. Render must apply the frame
// and report the commit later on the host's update thread; Defer must run its
// callback there after a minimal delay. Hosts that also implement
// LayoutFlusher support IncludeLayout.
//
// Start is not safe for concurrent use: it must be called from the host's
// update thread, and only one run is active per Sampler.
//
// # Suites
//
// LoadSuite and RunSuite run suite files, the same documents the cyclebench
// command accepts, including their thresholds:
//
//	suite, _ := bench.LoadSuite("cards.yaml")
//	result, _ := bench.RunSuite(ctx, suite)
//	fmt.Printf("Passed: %v\n", result.Passed)
package bench
