// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package axpy

import (
	"fmt"
	"testing"

	"github.com/ajroetker/svebench/hwy"
)

var benchSizes = []int{64, 1000, 4096, 65536}

func BenchmarkSAXPY(b *testing.B) {
	for _, name := range []string{KernelPredicated, KernelChunked, KernelScalar} {
		kernel, err := Lookup(name, hwy.ScalableTag[float32]{})
		if err != nil {
			b.Fatal(err)
		}
		for _, n := range benchSizes {
			x := make([]float32, n)
			y := make([]float32, n)
			for i := range n {
				x[i] = float32(i)
				y[i] = float32(n - i)
			}
			b.Run(fmt.Sprintf("%s/n=%d", name, n), func(b *testing.B) {
				b.ReportAllocs()
				b.SetBytes(int64(n) * 4 * 3)
				for range b.N {
					_ = kernel(2.5, x, y)
				}
			})
		}
	}
}

func BenchmarkSAXPYWidths(b *testing.B) {
	const n = 4096
	x := make([]float32, n)
	y := make([]float32, n)
	for _, lanes := range []int{4, 8, 16, 64} {
		tag := hwy.SizedTagForLanes[float32](lanes)
		b.Run(tag.Name(), func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				_ = BaseSAXPY(tag, 2.5, x, y)
			}
		})
	}
}

// BenchmarkSAXPYVersusScalar reports each vector kernel's throughput
// relative to the scalar loop on the same data.
func BenchmarkSAXPYVersusScalar(b *testing.B) {
	const n = 65536
	x := make([]float32, n)
	y := make([]float32, n)
	for i := range n {
		x[i] = float32(i)
	}
	scalar := testing.Benchmark(func(b *testing.B) {
		for range b.N {
			_ = BaseSAXPYScalar(2.5, x, y)
		}
	})
	for _, name := range []string{KernelPredicated, KernelChunked} {
		kernel, err := Lookup(name, hwy.ScalableTag[float32]{})
		if err != nil {
			b.Fatal(err)
		}
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				_ = kernel(2.5, x, y)
			}
			if scalar.N > 0 && b.Elapsed() > 0 {
				perOp := float64(b.Elapsed().Nanoseconds()) / float64(b.N)
				b.ReportMetric(float64(scalar.NsPerOp())/perOp, "x-scalar")
			}
		})
	}
}
