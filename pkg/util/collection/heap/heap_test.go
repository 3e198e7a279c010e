// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package heap

import (
	"math/rand"
	"sort"
	"testing"
)

func Test_Heap_01(t *testing.T) {
	check_Heap_Order(t, []int{1, 2, 3})
}

func Test_Heap_02(t *testing.T) {
	check_Heap_Order(t, []int{3, 2, 1})
}

func Test_Heap_03(t *testing.T) {
	check_Heap_Order(t, []int{5, 1, 4, 1, 5, 9, 2, 6})
}

func Test_Heap_04(t *testing.T) {
	for i := 0; i < 100; i++ {
		items := make([]int, 1000)
		for j := range items {
			items[j] = rand.Intn(64)
		}
		//
		check_Heap_Order(t, items)
	}
}

func Test_Heap_05(t *testing.T) {
	// Interleave pushing and popping.
	h := New(func(l, r int) bool { return l < r })
	h.Push(7)
	h.Push(2)
	//
	if v := h.Pop(); v != 2 {
		t.Errorf("unexpected item %d (pop)", v)
	}
	//
	h.Push(1)
	h.Push(9)
	//
	if v := h.Peek(); v != 1 {
		t.Errorf("unexpected item %d (peek)", v)
	}
	//
	if v := h.Pop(); v != 1 {
		t.Errorf("unexpected item %d (pop)", v)
	}
	//
	if h.Len() != 2 {
		t.Errorf("unexpected length %d", h.Len())
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_Heap_Order(t *testing.T, items []int) {
	h := New(func(l, r int) bool { return l < r })
	//
	for _, item := range items {
		h.Push(item)
	}
	// Popping must yield items in sorted order.
	expected := make([]int, len(items))
	copy(expected, items)
	sort.Ints(expected)
	//
	for i := 0; !h.Empty(); i++ {
		if v := h.Pop(); v != expected[i] {
			t.Fatalf("unexpected item %d at position %d (expected %d)", v, i, expected[i])
		}
	}
}
