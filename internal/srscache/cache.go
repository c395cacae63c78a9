// Copyright 2021 Airbus Defence and Space
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

// Package srscache keeps the WKT of recently resolved authority codes, so that
// repeated lookups of the same code do not hit the proj database.
package srscache

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru"
)

type Cache struct {
	c *lru.Cache
}

func NewCache(entries uint) (*Cache, error) {
	c, err := lru.New(int(entries))
	if err != nil {
		return nil, fmt.Errorf("lru.new: %w", err)
	}
	return &Cache{c: c}, nil
}

func (cg *Cache) Add(authority string, code int, wkt string) {
	cg.c.Add(skey(authority, code), wkt)
}

func (cg *Cache) Get(authority string, code int) (string, bool) {
	wkt, ok := cg.c.Get(skey(authority, code))
	if !ok {
		return "", false
	}
	return wkt.(string), true
}

// PurgeAuthority removes all the codes of the given authority
func (cg *Cache) PurgeAuthority(authority string) {
	prefix := strings.ToUpper(authority) + ":"
	for _, k := range cg.c.Keys() {
		if strings.HasPrefix(k.(string), prefix) {
			cg.c.Remove(k)
		}
	}
}

func (cg *Cache) Purge() {
	cg.c.Purge()
}

func (cg *Cache) Len() int {
	return cg.c.Len()
}

func skey(authority string, code int) string {
	return fmt.Sprintf("%s:%d", strings.ToUpper(authority), code)
}
