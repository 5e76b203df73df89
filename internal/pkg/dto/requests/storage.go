package requests

type UploadFile struct {
	BucketName  string
	ObjectName  string
	Data        []byte
	ContentType string
}
