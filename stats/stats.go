// Package stats reports the progress of a pass over an OSM extract.
package stats

import (
	"fmt"
	"time"
)

type counter struct {
	nodes     int64
	ways      int64
	tags      int64
	lastNodes int64
	lastWays  int64
	lastTags  int64
	lastTick  time.Time
}

// Counts are the final element counts of a pass.
type Counts struct {
	Nodes int64
	Ways  int64
	Tags  int64
}

// Statistics counts processed nodes, ways and tags and prints the
// rates once per second. All methods are safe for concurrent use.
type Statistics struct {
	nodes chan int
	ways  chan int
	tags  chan int
	quit  chan chan Counts
}

func (s *Statistics) AddNodes(n int) { s.nodes <- n }
func (s *Statistics) AddWays(n int)  { s.ways <- n }
func (s *Statistics) AddTags(n int)  { s.tags <- n }

// Stop stops the reporting and returns the final counts.
func (s *Statistics) Stop() Counts {
	result := make(chan Counts)
	s.quit <- result
	return <-result
}

func NewReporter() *Statistics {
	s := &Statistics{
		nodes: make(chan int),
		ways:  make(chan int),
		tags:  make(chan int),
		quit:  make(chan chan Counts),
	}

	go func() {
		c := counter{lastTick: time.Now()}
		tick := time.NewTicker(time.Second)
		defer tick.Stop()
		for {
			select {
			case n := <-s.nodes:
				c.nodes += int64(n)
			case n := <-s.ways:
				c.ways += int64(n)
			case n := <-s.tags:
				c.tags += int64(n)
			case <-tick.C:
				c.print()
			case result := <-s.quit:
				c.print()
				fmt.Print("\n")
				result <- Counts{Nodes: c.nodes, Ways: c.ways, Tags: c.tags}
				return
			}
		}
	}()
	return s
}

func (c *counter) print() {
	dur := time.Since(c.lastTick)
	nodesPS := int64(float64(c.nodes-c.lastNodes) / dur.Seconds())
	waysPS := int64(float64(c.ways-c.lastWays) / dur.Seconds())
	tagsPS := int64(float64(c.tags-c.lastTags) / dur.Seconds())

	fmt.Printf("Nodes: %6d/s (%8d) Ways: %6d/s (%7d) Tags: %6d/s (%8d)\r",
		nodesPS, c.nodes, waysPS, c.ways, tagsPS, c.tags,
	)
	c.lastNodes = c.nodes
	c.lastWays = c.ways
	c.lastTags = c.tags
	c.lastTick = time.Now()
}
