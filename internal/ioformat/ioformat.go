// Package ioformat reads an on-disk line-oriented sparse QUBO format,
// deliberately simple:
//
//	n <n>
//	c <i> <value>        (repeated, dense linear term)
//	q <i> <j> <value>    (repeated, sparse quadratic entries)
//
// Blank lines and lines starting with '#' are ignored.
package ioformat

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	qubobb "github.com/jjhbw/qubobb"
)

// Parse reads a problem from r in the format described in the package
// doc comment.
func Parse(r *bufio.Reader) (*qubobb.Problem, error) {
	n := -1
	c := map[int]float64{}
	var iIdx, jIdx []int
	var qVals []float64

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "n":
			if len(fields) != 2 {
				return nil, fmt.Errorf("ioformat: line %d: expected 'n <count>'", lineNo)
			}
			v, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("ioformat: line %d: %w", lineNo, err)
			}
			n = v

		case "c":
			if len(fields) != 3 {
				return nil, fmt.Errorf("ioformat: line %d: expected 'c <i> <value>'", lineNo)
			}
			i, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("ioformat: line %d: %w", lineNo, err)
			}
			v, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("ioformat: line %d: %w", lineNo, err)
			}
			c[i] = v

		case "q":
			if len(fields) != 4 {
				return nil, fmt.Errorf("ioformat: line %d: expected 'q <i> <j> <value>'", lineNo)
			}
			i, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("ioformat: line %d: %w", lineNo, err)
			}
			j, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("ioformat: line %d: %w", lineNo, err)
			}
			v, err := strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return nil, fmt.Errorf("ioformat: line %d: %w", lineNo, err)
			}
			iIdx = append(iIdx, i)
			jIdx = append(jIdx, j)
			qVals = append(qVals, v)

		default:
			return nil, fmt.Errorf("ioformat: line %d: unrecognised record %q", lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("ioformat: missing 'n' record")
	}

	cDense := make([]float64, n)
	for i, v := range c {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("ioformat: linear term index %d out of range for n=%d", i, n)
		}
		cDense[i] = v
	}

	return qubobb.NewProblem(n, iIdx, jIdx, qVals, cDense)
}
