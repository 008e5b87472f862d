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

// Package contrib groups kernels built on the portable hwy operations.
//
// # Subpackages
//
//   - axpy: y = a*x + y, predicated (vector-length-agnostic), chunked and
//     scalar forms with runtime dispatch
//
// Kernels take a hwy.Tag, so one implementation serves every vector
// width. Pass hwy.ScalableTag to follow the hardware:
//
//	import "github.com/ajroetker/svebench/hwy/contrib/axpy"
//
//	err := axpy.BaseSAXPY(hwy.ScalableTag[float32]{}, 2.5, x, y)
package contrib
