package svgimg

import (
	"fmt"
	"sync"
)

// BlobStore 管理短命的内存 blob URL：SVG 标记在转换期间被包装成
// "blob:quill/N" 形式的 URL，解码后立即 Revoke，成功失败都不例外。
type BlobStore struct {
	mu    sync.Mutex
	next  int
	blobs map[string][]byte
}

// NewBlobStore 创建空的 blob 仓库。
func NewBlobStore() *BlobStore {
	return &BlobStore{blobs: map[string][]byte{}}
}

// Put 登记一段数据并返回其临时 URL。
func (s *BlobStore) Put(data []byte) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	url := fmt.Sprintf("blob:quill/%d", s.next)
	s.blobs[url] = data
	return url
}

// Get 取出 URL 对应的数据。
func (s *BlobStore) Get(url string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[url]
	return data, ok
}

// Revoke 释放 URL。重复释放无副作用。
func (s *BlobStore) Revoke(url string) {
	s.mu.Lock()
	delete(s.blobs, url)
	s.mu.Unlock()
}

// Len 返回存活的 blob 数，用于资源释放的校验。
func (s *BlobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}
