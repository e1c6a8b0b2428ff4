package pipeline

import "strings"

// Namespace is the key prefix grouping stored objects by feature area.
type Namespace string

const (
	NamespaceProfilePictures    Namespace = "profile-pictures/"
	NamespaceCoverPhotos        Namespace = "cover-photos/"
	NamespacePostMedia          Namespace = "post-media/"
	NamespaceStoryMedia         Namespace = "story-media/"
	NamespaceVideos             Namespace = "videos/"
	NamespaceKYCDocuments       Namespace = "kyc-documents/"
	NamespacePaymentProofs      Namespace = "payment-proofs/"
	NamespaceMessageAttachments Namespace = "message-attachments/"
	NamespaceUploads            Namespace = "uploads/"
)

// roleNamespaces maps every context-free role to its namespace. Roles absent
// from this table and from the context-sensitive set fall through to
// NamespaceUploads.
var roleNamespaces = map[string]Namespace{
	"profilePicture": NamespaceProfilePictures,
	"coverPhoto":     NamespaceCoverPhotos,
	"video":          NamespaceVideos,
	"idFront":        NamespaceKYCDocuments,
	"idBack":         NamespaceKYCDocuments,
	"selfie":         NamespaceKYCDocuments,
	"screenshot":     NamespacePaymentProofs,
	"attachment":     NamespaceMessageAttachments,
}

// ClassifyRole resolves a file's role to its storage namespace. The generic
// "media" role is context-sensitive: the same field name lands in different
// namespaces depending on the feature route that accepted the upload,
// disambiguated by the route's mount path. The function is total — any
// unrecognized role resolves to the catch-all namespace.
func ClassifyRole(role, routeContext string) Namespace {
	if role == "media" {
		switch {
		case strings.HasPrefix(routeContext, "/stories"):
			return NamespaceStoryMedia
		case strings.HasPrefix(routeContext, "/posts"):
			return NamespacePostMedia
		}
		return NamespaceUploads
	}

	if ns, ok := roleNamespaces[role]; ok {
		return ns
	}
	return NamespaceUploads
}
