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

//go:build !linux || !arm64

package hwy

// HasSVE reports SVE support. Outside linux/arm64 there is no portable
// way to query the vector length, so SVE is treated as absent.
func HasSVE() bool {
	return false
}

// SVEVectorBytes always returns 0 outside linux/arm64.
func SVEVectorBytes() int {
	return 0
}
