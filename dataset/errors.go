// Copyright 2025 Poiesic Systems
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


package dataset

import "errors"

var (
	// ErrLoad is the root error for all dataset load failures. A load
	// failure is fatal: the process must not begin serving without a
	// fully loaded dataset.
	ErrLoad = errors.New("dataset load failed")

	// ErrMissingColumn indicates a required column is absent from the header.
	ErrMissingColumn = errors.New("missing required column")

	// ErrEmptyDataset indicates the source contained no data rows.
	ErrEmptyDataset = errors.New("dataset contains no rows")
)
