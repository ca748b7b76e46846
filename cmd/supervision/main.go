// Copyright 2026 The SuperVision Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package main provides the supervision CLI: training an AlexNet classifier
// on CIFAR-100 and explaining its predictions with Grad-CAM and guided
// backpropagation.
package main

import (
	"fmt"
	"os"
	"os/signal"
)

const version = "v0.1.0-dev"

func main() {
	// Mirror the interactive convention: interrupt exits with status 1.
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		fmt.Fprintln(os.Stderr, "interrupted")
		os.Exit(1)
	}()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "train":
		if err := runTrain(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "train:", err)
			os.Exit(1)
		}
	case "explain":
		if err := runExplain(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "explain:", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("supervision %s\n", version)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("supervision - AlexNet classification with visual explanations")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  train      Train the model on CIFAR-100")
	fmt.Println("  explain    Visualize a prediction with Grad-CAM and guided backprop")
	fmt.Println("  version    Show version")
}
