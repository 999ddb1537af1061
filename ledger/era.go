// Copyright 2026 Blink Labs Software
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
package ledger

const (
	EraIdByron   = 0
	EraIdShelley = 1
	EraIdAllegra = 2
	EraIdMary    = 3
	EraIdAlonzo  = 4
	EraIdBabbage = 5
	EraIdConway  = 6
)

// Block era tags as they appear in the [era, block] envelope. Tags 0 and 1 are
// the Byron epoch boundary and main blocks
const (
	BlockEraTagShelley = 2
	BlockEraTagAllegra = 3
	BlockEraTagMary    = 4
	BlockEraTagAlonzo  = 5
	BlockEraTagBabbage = 6
	BlockEraTagConway  = 7
)

type Era struct {
	Id   uint8
	Name string
}

var eras = map[uint8]Era{
	EraIdByron:   {Id: EraIdByron, Name: "Byron"},
	EraIdShelley: {Id: EraIdShelley, Name: "Shelley"},
	EraIdAllegra: {Id: EraIdAllegra, Name: "Allegra"},
	EraIdMary:    {Id: EraIdMary, Name: "Mary"},
	EraIdAlonzo:  {Id: EraIdAlonzo, Name: "Alonzo"},
	EraIdBabbage: {Id: EraIdBabbage, Name: "Babbage"},
	EraIdConway:  {Id: EraIdConway, Name: "Conway"},
}

func GetEraById(eraId uint8) *Era {
	era, ok := eras[eraId]
	if !ok {
		return nil
	}
	return &era
}

func (e Era) String() string {
	return e.Name
}
